package dashboard

import "errors"

var ErrSnapshotNotFound = errors.New("no cached dashboard snapshot")
