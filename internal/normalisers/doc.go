// Package normalisers turns uploaded bytes into plain text. Each
// subpackage handles one file type; the Registry picks the highest
// priority normaliser for a document's type.
//
// Built-in normalisers:
//   - plaintext: UTF-8 with Latin-1 and Windows-1252 fallbacks
//   - pdf: text layer via github.com/ledongthuc/pdf
//   - docx: paragraphs and tables from word/document.xml
//   - image: OCR via the tesseract binary
package normalisers
