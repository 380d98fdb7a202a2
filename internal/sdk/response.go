package sdk

import "github.com/tidwall/gjson"

// ParseLoginResponse decodes the JSON form of an FB.login callback payload.
// Anything that is not a JSON object yields an empty response, which callers
// treat as a dismissed popup.
func ParseLoginResponse(raw string) LoginResponse {
	if !gjson.Valid(raw) {
		return LoginResponse{}
	}
	root := gjson.Parse(raw)
	if !root.IsObject() {
		return LoginResponse{}
	}
	resp := LoginResponse{Status: scalar(root.Get("status"))}
	auth := root.Get("authResponse")
	if auth.IsObject() {
		resp.AuthResponse = &AuthResponse{
			Code:        scalar(auth.Get("code")),
			AccessToken: scalar(auth.Get("accessToken")),
			UserID:      scalar(auth.Get("userID")),
			ExpiresIn:   auth.Get("expiresIn").Int(),
		}
	}
	return resp
}

// scalar returns strings and numbers as text and everything else as "".
func scalar(r gjson.Result) string {
	switch r.Type {
	case gjson.String, gjson.Number:
		return r.String()
	default:
		return ""
	}
}
