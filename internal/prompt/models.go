package prompt

type AnalysisPromptData struct {
	CommandCount   int
	CatalogListing string
	UserMessage    string
}
