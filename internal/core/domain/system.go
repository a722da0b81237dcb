package domain

// SystemInfo identifies the host a backup was taken on. Recorded in
// archive manifests and logs.
type SystemInfo struct {
	Hostname     string `json:"hostname"`
	Username     string `json:"username"`
	Platform     string `json:"platform"`
	Architecture string `json:"architecture"`
	IsRoot       bool   `json:"is_root"`
	Timestamp    int64  `json:"timestamp"`
}
