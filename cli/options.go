package cli

// Options describes the command line surface. One positional action selects
// the operation; flags carry its inputs.
type Options struct {
	ConfigPath string `short:"f" long:"config" description:"configuration file location"`
	BaseURL    string `short:"u" long:"url" description:"service base URL, overrides the configuration file"`
	Verbose    bool   `short:"v" long:"verbose" description:"enable debug logging"`

	Name            string `long:"name" description:"display name (signup, profile)"`
	Email           string `long:"email" description:"account email"`
	Password        string `short:"p" long:"password" description:"account password"`
	NewPassword     string `long:"new-password" description:"new password (profile)"`
	CurrentPassword string `long:"current-password" description:"current password, required with --new-password"`
	ConfirmPassword string `long:"confirm-password" description:"confirmation of the new password"`
	Avatar          string `long:"avatar" description:"avatar image location, local path or URL"`
	Group           string `long:"group" description:"muscle group id (exercises)"`

	Args struct {
		Action string `positional-arg-name:"action" description:"signin|signup|signout|whoami|profile|avatar|groups|exercises"`
	} `positional-args:"yes" required:"yes"`
}
