package state

import "github.com/openrevue/revue-cli/internal/api"

// AppendComment adds a server-confirmed comment to the end of the thread.
// Insertion order is display order: oldest first, newest appended.
func AppendComment(thread []api.Comment, comment api.Comment) []api.Comment {
	return append(thread, comment)
}

// ReplaceComment swaps the entry with the same id for the server's returned
// representation. A missing id leaves the thread unchanged, so retrying the
// same confirmation is harmless.
func ReplaceComment(thread []api.Comment, comment api.Comment) []api.Comment {
	i := FindComment(thread, comment.ID)
	if i < 0 {
		return thread
	}
	out := append([]api.Comment(nil), thread...)
	out[i] = comment
	return out
}

// RemoveComment drops the entry with the given id. Removing an id that is
// already gone is a no-op.
func RemoveComment(thread []api.Comment, id int64) []api.Comment {
	out := make([]api.Comment, 0, len(thread))
	for _, comment := range thread {
		if comment.ID != id {
			out = append(out, comment)
		}
	}
	return out
}

// FindComment returns the index of the comment with the given id, or -1.
func FindComment(thread []api.Comment, id int64) int {
	for i, comment := range thread {
		if comment.ID == id {
			return i
		}
	}
	return -1
}
