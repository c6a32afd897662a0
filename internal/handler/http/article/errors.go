package article

import (
	"errors"
	"net/http"

	"newsdesk/internal/handler/http/pathutil"
	"newsdesk/internal/handler/http/respond"
	artUC "newsdesk/internal/usecase/article"
)

var errInvalidBody = errors.New("invalid request body")

func writeError(w http.ResponseWriter, err error) {
	code := respond.StatusFor(err)
	switch {
	case errors.Is(err, artUC.ErrArticleNotFound):
		code = http.StatusNotFound
	case errors.Is(err, artUC.ErrInvalidArticleID), errors.Is(err, pathutil.ErrInvalidID):
		code = http.StatusBadRequest
	}
	respond.SafeError(w, code, err)
}
