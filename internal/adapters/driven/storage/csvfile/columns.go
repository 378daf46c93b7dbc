package csvfile

// Column headers, in file order.
const (
	colCINumber         = "CI Number"
	colCNRNumber        = "CNR Number"
	colCaseNumber       = "Case Number"
	colCaseTitle        = "Case Title"
	colCaseType         = "Case Type"
	colCaseStatus       = "Case Status"
	colFilingDate       = "Filing Date"
	colRegistrationDate = "Registration Date"
	colActs             = "Acts"
	colPetitioner       = "Petitioner"
	colRespondent       = "Respondent"
	colJudge            = "Judge"
	colBench            = "Bench"
	colHearings         = "History of Case Hearings"
	colJudgementDate    = "Judgement Date"
	colInterimOrderURLs = "List of Interim Order URLs"
	colJudgementURL     = "Judgement URL"
)

// Header is the header row written by Sink.
var Header = []string{
	colCINumber, colCNRNumber, colCaseNumber, colCaseTitle, colCaseType,
	colCaseStatus, colFilingDate, colRegistrationDate, colActs, colPetitioner,
	colRespondent, colJudge, colBench, colHearings, colJudgementDate,
	colInterimOrderURLs, colJudgementURL,
}

// requiredColumns must be present for a file to be ingested.
var requiredColumns = []string{
	colCNRNumber, colCaseTitle, colCaseType, colInterimOrderURLs, colJudgementURL,
}
