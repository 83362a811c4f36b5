package dto

// RecurringRunReport summarizes one invocation of the recurring processor.
// A template due for several past periods advances one step per run, so
// Processed counts templates advanced, not periods caught up.
type RecurringRunReport struct {
	Processed int `json:"processed"` // Copies posted and templates advanced
	Skipped   int `json:"skipped"`   // Duplicate-guard hits (advanced without posting)
	Failed    int `json:"failed"`    // Per-template errors, logged and passed over
}

// DuePreviewResponse is the dry-run view of the templates a processor run
// would touch, with no side effects.
type DuePreviewResponse struct {
	Due   []TransactionResponse `json:"due"`
	Count int                   `json:"count"`
}
