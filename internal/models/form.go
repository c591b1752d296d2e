package models

// InputRequest тело PUT /api/form/input
type InputRequest struct {
	LongURL string `json:"long_url"`
}

// FormView состояние формы в ответах JSON API
type FormView struct {
	LongURL      string `json:"long_url"`
	ShortURL     string `json:"short_url,omitempty"`
	Error        string `json:"error,omitempty"`
	ErrorKind    string `json:"error_kind,omitempty"`
	IsSubmitting bool   `json:"is_submitting"`
	State        string `json:"state"`
}
