package domain

import (
	"context"
	"time"
)

// CommentVote is one user's like or dislike on one comment.
// The (CommentID, Username) pair is unique at the store boundary.
type CommentVote struct {
	CommentID int64
	Username  string
	IsLike    bool
	CreatedAt time.Time
}

// VoteState is the caller-facing view of a user's vote on a comment.
// Both fields are false when no vote exists.
type VoteState struct {
	Liked    bool
	Disliked bool
}

// VoteOp tells the store what to do with the vote row itself.
type VoteOp int8

const (
	OpNone VoteOp = iota
	OpCreate
	OpFlip
	OpDelete
)

// VoteTransition is the outcome of reconciling a vote intent against the
// existing row: the row operation plus the exact counter deltas to apply in
// the same transaction. All counter arithmetic in the system goes through
// the two functions below, so the coupling between vote rows and the
// denormalized counters stays auditable in one place.
type VoteTransition struct {
	Op            VoteOp
	LikesDelta    int64
	DislikesDelta int64
}

// ReconcileVote computes the transition for a like (isLike) or dislike
// (!isLike) intent. existing is nil when the user has no vote yet.
//
//   - no row: create it, +1 on the matching counter
//   - same sign: no-op, repeating a vote does not toggle it off
//   - opposite sign: flip the row, -1 old counter, +1 new counter
func ReconcileVote(existing *CommentVote, isLike bool) VoteTransition {
	if existing == nil {
		t := VoteTransition{Op: OpCreate}
		if isLike {
			t.LikesDelta = 1
		} else {
			t.DislikesDelta = 1
		}
		return t
	}

	if existing.IsLike == isLike {
		return VoteTransition{Op: OpNone}
	}

	t := VoteTransition{Op: OpFlip}
	if isLike {
		t.LikesDelta = 1
		t.DislikesDelta = -1
	} else {
		t.LikesDelta = -1
		t.DislikesDelta = 1
	}
	return t
}

// ReconcileRemoval computes the transition for withdrawing a vote.
// Decrements are always paired with an existing row of that sign, so
// counters cannot go below zero through these paths; the store still clamps
// at zero as a floor against pre-existing drift.
func ReconcileRemoval(existing *CommentVote) VoteTransition {
	if existing == nil {
		return VoteTransition{Op: OpNone}
	}

	t := VoteTransition{Op: OpDelete}
	if existing.IsLike {
		t.LikesDelta = -1
	} else {
		t.DislikesDelta = -1
	}
	return t
}

// VoteRepository applies vote transitions transactionally: the vote row
// change and the comment counter deltas commit together or not at all.
type VoteRepository interface {
	// Get returns the user's vote on the comment, or ErrNotFound.
	Get(ctx context.Context, commentID int64, username string) (CommentVote, error)

	// ApplyVote runs ReconcileVote and applies it. The comment must exist
	// (ErrNotFound otherwise). A unique-key conflict from a concurrent
	// first vote of the same pair is resolved by re-reading and retrying
	// the flip/no-op path once. Returns the comment with fresh counters.
	ApplyVote(ctx context.Context, commentID int64, username string, isLike bool) (Comment, error)

	// RemoveVote runs ReconcileRemoval and applies it, clamping counters at
	// zero. Removing a non-existent vote is a no-op. Returns the comment.
	RemoveVote(ctx context.Context, commentID int64, username string) (Comment, error)
}
