package dash2pdf

// Environment variables overriding the configured download user.
const (
	EnvDownloadUser = "PDF_DOWNLOAD_USER"
	EnvDownloadPass = "PDF_DOWNLOAD_PASS"
)

// LookupFunc reads one environment variable, like os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ResolveCredentials picks the credentials for a run.
// When EnvDownloadUser is present, both values come from the environment
// and the static pair is ignored entirely. No shape validation happens here:
// bad credentials surface as ErrAuthRejected during login.
func ResolveCredentials(static Credentials, lookup LookupFunc) Credentials {
	if lookup == nil {
		return static
	}
	user, ok := lookup(EnvDownloadUser)
	if !ok {
		return static
	}
	pass, _ := lookup(EnvDownloadPass)
	return Credentials{Username: user, Password: pass}
}
