package kvrepo

// Namespace prefixes. Each repository owns exactly one.
const (
	ReportPrefix  = "problem:"
	AccountPrefix = "user:"
)

func reportKey(id string) string     { return ReportPrefix + id }
func accountKey(email string) string { return AccountPrefix + email }
