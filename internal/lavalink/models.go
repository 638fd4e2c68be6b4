package lavalink

import "time"

// LoadType describes what a resolve call found.
type LoadType string

const (
	LoadTypeTrackLoaded    LoadType = "TRACK_LOADED"
	LoadTypePlaylistLoaded LoadType = "PLAYLIST_LOADED"
	LoadTypeSearchResult   LoadType = "SEARCH_RESULT"
	LoadTypeNoMatches      LoadType = "NO_MATCHES"
	LoadTypeLoadFailed     LoadType = "LOAD_FAILED"
)

// Track pairs an encoded track token with its descriptive metadata. The
// token is opaque: it is issued and understood only by the node, and is
// passed back verbatim to play or decode it.
type Track struct {
	Track string    `json:"track"`
	Info  TrackInfo `json:"info"`
}

// TrackInfo is the node's description of a track.
type TrackInfo struct {
	Identifier string `json:"identifier"`
	IsSeekable bool   `json:"isSeekable"`
	Author     string `json:"author"`
	Length     int64  `json:"length"`
	IsStream   bool   `json:"isStream"`
	Position   int64  `json:"position"`
	Title      string `json:"title"`
	URI        string `json:"uri"`
}

// Duration returns the track length as a time.Duration.
func (i TrackInfo) Duration() time.Duration {
	return time.Duration(i.Length) * time.Millisecond
}

// PlaylistInfo is playlist metadata attached to a PLAYLIST_LOADED response.
type PlaylistInfo struct {
	Name          string `json:"name"`
	SelectedTrack int    `json:"selectedTrack"`
}

// LavalinkResponse is the result of resolving an identifier. Tracks is
// empty only for NO_MATCHES and LOAD_FAILED responses.
type LavalinkResponse struct {
	LoadType     LoadType     `json:"loadType"`
	PlaylistInfo PlaylistInfo `json:"playlistInfo"`
	Tracks       []Track      `json:"tracks"`
}

// First returns the first loaded track, or nil if nothing was loaded.
func (r *LavalinkResponse) First() *Track {
	if r == nil || len(r.Tracks) == 0 {
		return nil
	}
	return &r.Tracks[0]
}

// RoutePlannerStatus reports the node's outbound-IP rotation state. Both
// fields are nil when the node has no route planner configured.
type RoutePlannerStatus struct {
	Class   *string              `json:"class"`
	Details *RoutePlannerDetails `json:"details"`
}

// RoutePlannerDetails describes the planner's IP block and its failing
// addresses, plus rotation bookkeeping that varies by planner strategy.
type RoutePlannerDetails struct {
	IPBlock          IPBlock          `json:"ipBlock"`
	FailingAddresses []FailingAddress `json:"failingAddresses"`

	// RotatingIpRoutePlanner
	RotateIndex    string `json:"rotateIndex,omitempty"`
	IPIndex        string `json:"ipIndex,omitempty"`
	CurrentAddress string `json:"currentAddress,omitempty"`

	// NanoIpRoutePlanner / RotatingNanoIpRoutePlanner
	CurrentAddressIndex string `json:"currentAddressIndex,omitempty"`
	BlockIndex          string `json:"blockIndex,omitempty"`
}

// IPBlock describes the address block the planner rotates through.
type IPBlock struct {
	Type string `json:"type"`
	Size string `json:"size"`
}

// FailingAddress is an address the planner has marked as failing.
type FailingAddress struct {
	Address   string `json:"failingAddress"`
	Timestamp int64  `json:"failingTimestamp"`
	Time      string `json:"failingTime"`
}

// FailedAt returns the failure timestamp as a time.Time.
func (a FailingAddress) FailedAt() time.Time {
	return time.UnixMilli(a.Timestamp)
}
