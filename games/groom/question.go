/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package groom

import (
	"fmt"
)

const (
	questionLength = 5
	answerLength   = 10
)

// Window is a [Start, End] span of video time, in seconds.
type Window struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// QuestionRecord is one question/answer pair cut from a source video.
type QuestionRecord struct {
	ID               string `json:"id"`
	SourceVideoID    string `json:"source_video_id"`
	Question         string `json:"question"`
	Answer           string `json:"answer"`
	QuestionWindow   Window `json:"question_window"`
	AnswerWindow     Window `json:"answer_window"`
	DisplayTimestamp string `json:"display_timestamp"`
}

// NewQuestionRecord derives the timing windows and display timestamp for the
// pair found at position index of the video's sequence.
func NewQuestionRecord(videoID string, index int, question, answer string, startSeconds int) QuestionRecord {
	if startSeconds < 0 {
		startSeconds = 0
	}

	return QuestionRecord{
		ID:            RecordID(videoID, index),
		SourceVideoID: videoID,
		Question:      question,
		Answer:        answer,
		QuestionWindow: Window{
			Start: startSeconds,
			End:   startSeconds + questionLength,
		},
		AnswerWindow: Window{
			Start: startSeconds + questionLength,
			End:   startSeconds + questionLength + answerLength,
		},
		DisplayTimestamp: FormatTimestamp(startSeconds),
	}
}

func RecordID(videoID string, index int) string {
	return fmt.Sprintf("q-%s-%d", videoID, index)
}

// FormatTimestamp renders seconds as zero-padded MM:SS.
func FormatTimestamp(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}

	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
