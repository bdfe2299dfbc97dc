/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package groom

import (
	"fmt"
	"slices"
	"strings"
)

// VideoRef identifies an uploaded video without holding its contents.
type VideoRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Editor assembles one question set, possibly from several videos. Pairs are
// typed in by hand for the current video or added in bulk from an
// extraction. Entries are append-only and their IDs follow their position.
type Editor struct {
	video   VideoRef
	videos  []VideoRef
	entries []QuestionRecord
	closed  bool
}

func NewEditor(video VideoRef) *Editor {
	e := &Editor{video: video}
	if video.ID != "" {
		e.videos = []VideoRef{video}
	}

	return e
}

// AddVideo makes video the target of subsequent AddEntry calls.
func (e *Editor) AddVideo(video VideoRef) error {
	if e.closed {
		return ErrClosed
	}

	if video.ID == "" {
		return fmt.Errorf("%w: video id is required", ErrValidation)
	}

	if !slices.ContainsFunc(e.videos, func(v VideoRef) bool { return v.ID == video.ID }) {
		e.videos = append(e.videos, video)
	}
	e.video = video

	return nil
}

// AddRecords appends records extracted from video.
func (e *Editor) AddRecords(video VideoRef, records []QuestionRecord) error {
	if e.closed {
		return ErrClosed
	}

	if len(records) == 0 {
		return fmt.Errorf("%w: no questions to add", ErrEmpty)
	}

	if err := e.AddVideo(video); err != nil {
		return err
	}

	for _, r := range records {
		r.SourceVideoID = video.ID
		r.ID = RecordID(video.ID, len(e.entries))
		e.entries = append(e.entries, r)
	}

	return nil
}

// AddEntry appends a pair starting at startSeconds into the video.
func (e *Editor) AddEntry(question, answer string, startSeconds int) (QuestionRecord, error) {
	if e.closed {
		return QuestionRecord{}, ErrClosed
	}

	question = strings.TrimSpace(question)
	answer = strings.TrimSpace(answer)

	switch {
	case question == "":
		return QuestionRecord{}, fmt.Errorf("%w: question is required", ErrValidation)
	case answer == "":
		return QuestionRecord{}, fmt.Errorf("%w: answer is required", ErrValidation)
	case startSeconds < 0:
		return QuestionRecord{}, fmt.Errorf("%w: start time cannot be negative", ErrValidation)
	}

	record := NewQuestionRecord(e.video.ID, len(e.entries), question, answer, startSeconds)
	e.entries = append(e.entries, record)

	return record, nil
}

// Finalize hands over the accumulated sequence and closes the editor.
// With no entries it fails with ErrEmpty and the editor stays open.
func (e *Editor) Finalize() ([]QuestionRecord, error) {
	if e.closed {
		return nil, ErrClosed
	}

	if len(e.entries) == 0 {
		return nil, ErrEmpty
	}

	out := e.entries
	e.entries = nil
	e.video = VideoRef{}
	e.videos = nil
	e.closed = true

	return out, nil
}

// Discard drops all entries and the video reference. Safe to call repeatedly.
func (e *Editor) Discard() {
	e.entries = nil
	e.video = VideoRef{}
	e.videos = nil
	e.closed = true
}

func (e *Editor) Entries() []QuestionRecord {
	return slices.Clone(e.entries)
}

func (e *Editor) Len() int {
	return len(e.entries)
}

// Video is the video new entries are attributed to.
func (e *Editor) Video() VideoRef {
	return e.video
}

func (e *Editor) Videos() []VideoRef {
	return slices.Clone(e.videos)
}

func (e *Editor) Closed() bool {
	return e.closed
}
