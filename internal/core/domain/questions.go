package domain

// SuggestedQuestions returns the predefined contract questions offered to
// users who have not typed their own.
func SuggestedQuestions() []string {
	return []string{
		"What is the contract name?",
		"Who are the parties that signed the contract?",
		"What is the agreement date of the contract?",
		"What is the date when the contract is effective?",
		"What date will the contract's initial term expire?",
		"What is the renewal term after the initial term expires?",
		"What is the notice period required to terminate renewal?",
		"Which state/country's law governs the interpretation of the contract?",
		"Can a party terminate this contract without cause?",
		"What are the payment terms and conditions?",
	}
}
