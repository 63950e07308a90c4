package models

import "time"

// Message is a discussion message. Replies are single-level: a reply never has replies.
type Message struct {
	ID         ID        `json:"id"`
	ThreadID   ID        `json:"threadId"`
	ParentID   ID        `json:"parentId,omitempty"`
	AuthorID   ID        `json:"authorId,omitempty"`
	AuthorName string    `json:"authorName"`
	AuthorRole string    `json:"authorRole,omitempty"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
	Replies    []Message `json:"replies,omitempty"`
}

// Thread is a discussion thread belonging to a school.
type Thread struct {
	ID        ID        `json:"id"`
	SchoolID  ID        `json:"sekolahId"`
	Title     string    `json:"judul"`
	IsPinned  bool      `json:"isPinned"`
	IsClosed  bool      `json:"isClosed"`
	CreatedAt time.Time `json:"createdAt"`
	Messages  []Message `json:"messages,omitempty"`
}

// Contains reports whether a message with the id is present, top-level or nested.
func (t *Thread) Contains(id ID) bool {
	for _, m := range t.Messages {
		if m.ID == id {
			return true
		}
		for _, r := range m.Replies {
			if r.ID == id {
				return true
			}
		}
	}
	return false
}

// Merge adds msg to the thread and reports whether it was added.
// Top-level messages are appended; replies go into their parent's Replies.
// Messages already present by id and replies to unknown parents are dropped.
func (t *Thread) Merge(msg Message) bool {
	if msg.ID == "" || t.Contains(msg.ID) {
		return false
	}
	msg.Replies = nil
	if msg.ParentID == "" {
		t.Messages = append(t.Messages, msg)
		return true
	}
	for i := range t.Messages {
		if t.Messages[i].ID == msg.ParentID {
			t.Messages[i].Replies = append(t.Messages[i].Replies, msg)
			return true
		}
	}
	return false
}

// MergeAll merges every message, including nested replies, and returns the ones added in order.
func (t *Thread) MergeAll(msgs []Message) []Message {
	var added []Message
	for _, m := range msgs {
		replies := m.Replies
		if t.Merge(m) {
			m.Replies = nil
			added = append(added, m)
		}
		for _, r := range replies {
			if r.ParentID == "" {
				r.ParentID = m.ID
			}
			if t.Merge(r) {
				added = append(added, r)
			}
		}
	}
	return added
}
