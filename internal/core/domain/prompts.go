package domain

// Default completion prompt templates. Users can override them with files
// in the prompt directory.

// AnswerPromptTemplate asks for a plain-text answer. Placeholders: excerpts, question.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
const AnswerPromptTemplate = `You are a legal expert explaining complex legal documents to everyday people. Based on the following legal document content, provide a detailed, easy-to-understand answer.

IMPORTANT FORMATTING RULES:
- Use CAPITAL LETTERS for headings and emphasis (not ** or markdown)
- Use dashes (-) or numbers (1., 2., 3.) for lists
- Use line breaks to separate sections clearly
- Use simple punctuation and spacing for emphasis
- Do NOT use **, [], or other markdown formatting

CONTENT INSTRUCTIONS:
1. Explain in Plain English: Use simple, everyday language that anyone can understand
2. Be Comprehensive: Provide detailed explanations with multiple aspects of the answer
3. Use Examples: When possible, include practical examples or scenarios
4. Break Down Complex Terms: Explain any legal jargon or technical terms in simple words
5. Structure Your Answer: Use clear paragraphs and numbered/bulleted lists for easy reading
6. Include Context: Explain why this information matters and how it applies in real situations
7. Reference Sources: Mention specific sections, subsections, or legal citations when available
8. Cover All Aspects: Address different scenarios, exceptions, or variations that might apply

Think of yourself as explaining this to a friend or family member who has no legal background.

Document Content:
%s

Question: %s

Provide a detailed, comprehensive answer in plain text format (no markdown):`

// ClassifyPromptTemplate asks for a JSON legal-document verdict. Placeholder: document sample.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
const ClassifyPromptTemplate = `You are a legal document classifier. Analyze the following document content and determine if this is a legal document.

Document Content:
%s

STRICT CRITERIA: Only classify as legal if the document contains:
- Legal terminology, clauses, or contractual language
- Official legal formatting or structure
- Legal obligations, rights, or duties
- Regulatory or statutory content
- Court-related or judicial content

NON-LEGAL documents include:
- General business documents, reports, manuals
- Academic papers, research documents
- Personal letters, emails, or correspondence
- Technical documentation, user guides
- Marketing materials, brochures
- News articles, blog posts
- Financial statements (unless legally binding)

Respond in this exact JSON format:
{
    "is_legal_document": true/false,
    "confidence": 0.0-1.0,
    "document_type": "specific type or 'Non-legal'",
    "explanation": "brief explanation of your decision"
}

Be STRICT - when in doubt, classify as non-legal. Respond ONLY with the JSON, no other text.`

// SimplifyPromptTemplate rewrites one chunk in plainer language. Placeholder: chunk text.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
const SimplifyPromptTemplate = `Please simplify and extract the key legal information from the following text chunk.
Focus on important contractual details like parties, dates, terms, obligations, and conditions.
Keep the essential information while removing unnecessary verbosity.

Text to simplify:
%s

Simplified version:`
