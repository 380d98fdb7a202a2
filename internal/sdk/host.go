package sdk

// Document is the slice of the DOM the loader needs to manage the SDK script tag.
type Document interface {
	HasScript(id string) bool
	// InjectScript appends a script element and calls done once with the
	// load result (nil on the load event, an error on the error event).
	InjectScript(id, src string, done func(error))
	RemoveScript(id string)
}

// Initializer calls the SDK's init entry point once the readiness hook fired.
type Initializer interface {
	Init(cfg Config) (Handle, error)
}

// InitializerFunc adapts a function to Initializer.
type InitializerFunc func(cfg Config) (Handle, error)

// Init calls f(cfg).
func (f InitializerFunc) Init(cfg Config) (Handle, error) { return f(cfg) }

// Handle is the initialised SDK entry point (window.FB).
type Handle interface {
	Login(opts LoginOptions, callback func(LoginResponse))
	GetLoginStatus(callback func(LoginResponse))
	Logout(callback func(LoginResponse))
}

// LoginOptions are the parameters passed to FB.login.
type LoginOptions struct {
	ConfigID                    string
	ResponseType                string
	OverrideDefaultResponseType bool
	Extras                      map[string]any
}

// LoginResponse is the payload delivered to the FB.login callback.
type LoginResponse struct {
	Status string
	// AuthResponse is nil when the user closed the popup without authorising.
	AuthResponse *AuthResponse
}

// AuthResponse carries the credentials returned by the popup flow.
type AuthResponse struct {
	Code        string
	AccessToken string
	UserID      string
	ExpiresIn   int64
}
