package middleware

import (
	"net/http"

	"github.com/attendly-app/attendance-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.Unauthorized(w, "Invalid token")
				return
			}

			claims, err := token.AsMap(r.Context())
			if err != nil {
				response.Unauthorized(w, "Invalid token")
				return
			}
			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.Unauthorized(w, "Invalid token")
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}

// Identity reads the authenticated subject from the verified token.
func Identity(r *http.Request) (employeeID, companyID, role string) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", "", ""
	}
	employeeID, _ = claims["employee_id"].(string)
	companyID, _ = claims["company_id"].(string)
	role, _ = claims["role"].(string)
	return employeeID, companyID, role
}
