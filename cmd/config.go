package cmd

type Config struct {
	HTTPPort        string
	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBSslMode       string
	CbrFeedURL      string
	RateCacheTTL    string
	TrackingBaseURL string
}
