package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"
	Forbidden           failure.ErrorCode = "Forbidden"

	// Snapshot pipeline.
	ListingFetchFailed failure.ErrorCode = "ListingFetchFailed"
	ListingEmpty       failure.ErrorCode = "ListingEmpty"
	DetailFetchFailed  failure.ErrorCode = "DetailFetchFailed"
	SnapshotInFlight   failure.ErrorCode = "SnapshotInFlight"
	SnapshotNotCached  failure.ErrorCode = "SnapshotNotCached"
	GameNotFound       failure.ErrorCode = "GameNotFound"
	InvalidSortKey     failure.ErrorCode = "InvalidSortKey"
)
