package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"
	"github.com/mcmclean4/Social-Distribution-sub000/logic"
	"github.com/mcmclean4/Social-Distribution-sub000/shared"
)

const (
	apiKeyHeader       = "X-API-KEY"
	metricsAuthHeader  = "Authorization"
	internalErrorStr   = "500 Internal Server Error"
	badRequestStr      = "400 Invalid Request"
	notFoundStr        = "404 Not Found"
	badApiKeyStr       = "401 Missing or Invalid API Key"
	badAuthorization   = "401 Missing or Invalid Authorization"
	missingCredentials = "401 Node Credentials Required"
	tooManyRequests    = "429 Too Many Requests"
	maxBodyBytes       = 1 << 20
)

// Defines a single HTTP handler (endpoint)
type handlerDef struct {
	method  string
	pattern string
	handler func(http.ResponseWriter, *http.Request)
}

// IHandlerGroup groups together multiple HTTP handler definitions.
type IHandlerGroup interface {
	Prefix() string
	GroupDefs() []handlerDef
	AuthMW() func(next http.Handler) http.Handler
}

func emptyMW(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.ServeHTTP(w, r)
	})
}

// Returns the JSON serialized object as the response body; handles errors.
func writeJsonResponse(logger shared.ILogger, w http.ResponseWriter, resp interface{}) {
	writeJsonStatus(logger, w, http.StatusOK, resp)
}

func writeJsonStatus(logger shared.ILogger, w http.ResponseWriter, code int, resp interface{}) {
	var err error
	var respJson []byte
	if respJson, err = json.Marshal(resp); err != nil {
		logger.Warnf("Failed to serialize response: %v", err)
		writeErrorResponse(w, internalErrorStr, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err = fmt.Fprintln(w, string(respJson)); err != nil {
		logger.Warnf("Failed to write response: %v", err)
	}
}

type errorResp struct {
	Error  string `json:"error"`
	Status int    `json:"status"`
}

func writeErrorResponse(w http.ResponseWriter, msg string, code int) {
	resp := errorResp{msg, code}
	respJson, _ := json.Marshal(resp)
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	fmt.Fprintln(w, string(respJson))
}

// Writes the problem, or a 500 for err. Returns true if anything was written.
func writeOutcome(logger shared.ILogger, w http.ResponseWriter, r *http.Request, prob *logic.Problem, err error) bool {
	if err != nil {
		logger.Errorf("%s %s failed: %v", r.Method, r.URL.Path, err)
		writeErrorResponse(w, internalErrorStr, http.StatusInternalServerError)
		return true
	}
	if prob != nil {
		logger.Infof("%s %s rejected with %d: %s", r.Method, r.URL.Path, prob.StatusCode(), prob.Message)
		writeErrorResponse(w, prob.Message, prob.StatusCode())
		return true
	}
	return false
}

func readBody(logger shared.ILogger, w http.ResponseWriter, r *http.Request) []byte {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		logger.Warnf("Failed to read request body: %v", err)
		writeErrorResponse(w, badRequestStr, http.StatusBadRequest)
		return nil
	}
	return body
}

// Reads and parses a JSON request body into obj; writes a 400 and returns false on failure.
func readJsonBody[T any](logger shared.ILogger, w http.ResponseWriter, r *http.Request, obj *T) bool {
	body := readBody(logger, w, r)
	if body == nil {
		return false
	}
	if err := json.Unmarshal(body, obj); err != nil {
		logger.Infof("Invalid JSON in %s %s: %v", r.Method, r.URL.Path, err)
		writeErrorResponse(w, badRequestStr, http.StatusBadRequest)
		return false
	}
	return true
}

// Route variables are still escaped because the router works on the encoded path.
func pathVar(r *http.Request, name string) string {
	val := mux.Vars(r)[name]
	if unescaped, err := url.PathUnescape(val); err == nil {
		return unescaped
	}
	return val
}

func isValidApiKey(cfg *shared.Config, apiKey string) bool {
	if apiKey == "" {
		return false
	}
	for _, key := range cfg.Secrets.ApiKeys {
		if apiKey == key {
			return true
		}
	}
	return false
}

func checkApiKey(cfg *shared.Config, logger shared.ILogger, w http.ResponseWriter, r *http.Request) bool {
	apiKey := r.Header.Get(apiKeyHeader)
	if isValidApiKey(cfg, apiKey) {
		return true
	}
	keyPart := apiKey
	if len(apiKey) > 4 {
		keyPart = apiKey[:4] + "..."
	}
	logger.Warnf("API request with missing or invalid key '%s': %s", keyPart, r.URL.Path)
	writeErrorResponse(w, badApiKeyStr, http.StatusUnauthorized)
	return false
}
