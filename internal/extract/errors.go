package extract

import "errors"

// ErrInvalidDocument indicates the attachment bytes are not a parseable PDF.
var ErrInvalidDocument = errors.New("invalid document")
