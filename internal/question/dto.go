package question

type CreateQuestionDTO struct {
	Text               string     `json:"text" validate:"required"`
	Options            []string   `json:"options" validate:"dive,required"`
	CorrectOptionIndex *int       `json:"correct_option_index" validate:"required,min=0,max=3"`
	Subject            string     `json:"subject" validate:"required"`
	Difficulty         Difficulty `json:"difficulty" validate:"required,oneof=easy medium hard"`
}

type UpdateQuestionDTO struct {
	Text               *string     `json:"text" validate:"omitnil,min=1"`
	Options            []string    `json:"options" validate:"omitempty,dive,required"`
	CorrectOptionIndex *int        `json:"correct_option_index" validate:"omitnil,min=0,max=3"`
	Subject            *string     `json:"subject" validate:"omitnil,min=1"`
	Difficulty         *Difficulty `json:"difficulty" validate:"omitnil,oneof=easy medium hard"`
}

type Filter struct {
	Subject    string
	Difficulty Difficulty
}
