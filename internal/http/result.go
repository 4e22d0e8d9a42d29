package httpapi

// Result response envelope shared by every endpoint
// - code: 2000 on success, -1 on error, see the constants below for special cases
// - type: 'success' | 'error' | 'warning'
// - message: string
// - result: any
type Result[T any] struct {
	Code    int    `json:"code"`
	Type    string `json:"type"`
	Message string `json:"message"`
	Result  T      `json:"result"`
}

const (
	ResultSuccess = 2000
	ResultError   = -1
	// ResultAccessDenied with HTTP 403; the front end shows its access-denied page
	ResultAccessDenied = 40300
	// ResultTokenExpired with HTTP 401; the front end returns to the login page
	ResultTokenExpired = 60401
)

func Ok[T any](result T) Result[T] {
	return Result[T]{Code: ResultSuccess, Type: "success", Message: "ok", Result: result}
}

func Fail(message string) Result[any] {
	return Result[any]{Code: ResultError, Type: "error", Message: message, Result: nil}
}

// AccessDenied body of a 403: the page renders nothing but this state
type AccessDenied struct {
	AccessDenied bool   `json:"accessDenied"`
	Destination  string `json:"destination,omitempty"`
}
