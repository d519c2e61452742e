package gate

// Route identifies which endpoint a request targets. Handlers tag requests
// with their route before running the gate; unresolvable paths are tagged
// RouteNotFound so 404s still flow through the full pipeline and audit log.
type Route string

const (
	RouteSecurityCreate  Route = "security-create"
	RouteSecurityLogin   Route = "security-login"
	RouteSecurityBanInfo Route = "security-baninfo"

	RouteUploadLocal Route = "upload-local"
	RouteGetLocal    Route = "get-local"

	RouteUploadLive      Route = "upload-live"
	RouteGetLive         Route = "get-live"
	RouteUploadReply     Route = "upload-reply"
	RouteGetReply        Route = "get-reply"
	RouteSubscribeLive   Route = "subscribe-live"
	RouteUnsubscribeLive Route = "unsubscribe-live"

	RouteUploadMessage Route = "upload-message"
	RouteGetMessage    Route = "get-message"

	RouteModReport Route = "mod-report"
	RouteModBlock  Route = "mod-block"

	RouteAnalyticsFeedback Route = "analytics-feedback"

	// RouteNotFound is the synthetic tag for requests that matched no URL.
	RouteNotFound Route = "404"
)

func (r Route) String() string { return string(r) }

// banExempt lists the routes a banned user may still call: account creation,
// login, and checking their own ban.
func (r Route) banExempt() bool {
	switch r {
	case RouteSecurityCreate, RouteSecurityLogin, RouteSecurityBanInfo:
		return true
	}
	return false
}
