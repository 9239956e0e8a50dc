package users

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// pathID parses a positive numeric path variable.
func pathID(r *http.Request, name string) (uint, error) {
	v, err := strconv.ParseUint(mux.Vars(r)[name], 10, 64)
	if err != nil || v == 0 {
		return 0, errors.New("invalid path id")
	}
	return uint(v), nil
}
