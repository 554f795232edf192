package nbastats

import "time"

const (
	providerName       = "nbastats"
	defaultBaseURL     = "https://stats.nba.com/stats"
	defaultHTTPTimeout = 30 * time.Second
	leagueID           = "00"
	maxErrorBody       = 512

	// stats.nba.com rejects requests that do not look like they come from nba.com.
	headerUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	headerReferer   = "https://www.nba.com/"
	headerOrigin    = "https://www.nba.com"
	headerAccept    = "application/json, text/plain, */*"
)

const (
	endpointGameFinder = "leaguegamefinder"
	endpointCumeStats  = "cumestatsteam"
	endpointShotChart  = "shotchartdetail"
	endpointLeagueWide = "shotchartleaguewide"
)
