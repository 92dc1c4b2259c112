package events

const (
	StreamName   = "FUZZDX_EVENTS"
	StreamMaxAge = "720h" // 30 days
)

func SubjectDiagnosisCompleted(id string) string { return "fuzzdx.diagnosis." + id + ".completed" }

func SubjectBatchCompleted() string { return "fuzzdx.batch.completed" }
