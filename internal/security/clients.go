package security

// In-memory client registry for the admin token endpoint (replace with
// DB/config later). The storefront itself is unauthenticated; only the
// back-office order tooling holds credentials.
type Client struct {
	ID      string
	Secret  string
	Perms   []string // e.g. {"orders.read","orders.write"}
	Enabled bool
}

var Clients = map[string]Client{
	"bageri-admin":   {ID: "bageri-admin", Secret: "bageri-admin-secret", Perms: []string{"orders.read", "orders.write"}, Enabled: true},
	"prep-display":   {ID: "prep-display", Secret: "prep-display-secret", Perms: []string{"orders.read"}, Enabled: true},
	"bageri-reports": {ID: "bageri-reports", Secret: "reports-secret", Perms: []string{"orders.read"}, Enabled: true},
}
