package service

import (
	"testing"

	"learnhub_backend/internal/model"
)

func TestApplyQuestionInputValidation(t *testing.T) {
	base := QuestionInput{
		LessonID:   "l1",
		QuestionHe: "שאלה",
		QuestionEn: "question",
	}

	tests := []struct {
		name    string
		mutate  func(*QuestionInput)
		wantErr bool
	}{
		{
			name: "valid in both locales",
			mutate: func(in *QuestionInput) {
				in.OptionsHe = []string{"א", "ב", "ג", "ד"}
				in.OptionsEn = []string{"a", "b", "c", "d"}
				in.CorrectAnswerIndex = 3
			},
		},
		{
			name: "single locale",
			mutate: func(in *QuestionInput) {
				in.OptionsEn = []string{"a", "b", "c"}
				in.CorrectAnswerIndex = 2
			},
		},
		{
			name: "index past the shorter locale",
			mutate: func(in *QuestionInput) {
				in.OptionsHe = []string{"א", "ב", "ג", "ד"}
				in.OptionsEn = []string{"a", "b"}
				in.CorrectAnswerIndex = 3
			},
			wantErr: true,
		},
		{
			name: "negative index",
			mutate: func(in *QuestionInput) {
				in.OptionsHe = []string{"א", "ב"}
				in.CorrectAnswerIndex = -1
			},
			wantErr: true,
		},
		{
			name: "one option only",
			mutate: func(in *QuestionInput) {
				in.OptionsHe = []string{"א"}
			},
			wantErr: true,
		},
		{
			name:    "no options",
			mutate:  func(in *QuestionInput) {},
			wantErr: true,
		},
		{
			name: "no lesson or course target",
			mutate: func(in *QuestionInput) {
				in.LessonID = ""
				in.OptionsHe = []string{"א", "ב"}
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			tt.mutate(&in)
			err := applyQuestionInput(&model.QuizQuestion{}, in)
			if (err != nil) != tt.wantErr {
				t.Errorf("applyQuestionInput err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
