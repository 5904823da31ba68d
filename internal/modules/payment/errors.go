package payment

import "github.com/kovidbehl97/vroomtest/internal/pkg/apperr"

var ErrInvalidSignature = apperr.New(apperr.ErrUnauthenticated, "webhook signature verification failed")
