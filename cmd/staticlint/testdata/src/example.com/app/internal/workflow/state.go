package workflow

type FormState struct {
	LongURLInput   string
	ShortURLResult string
	IsSubmitting   bool
	Attempts       int
}

func Edit(s FormState, input string) FormState {
	if s.IsSubmitting {
		return s
	}
	s.LongURLInput = input
	s.Attempts++
	return s
}
