package api

type analyzeRequest struct {
	Password string `json:"password" binding:"required"`
}

type characterTypes struct {
	Lowercase bool `json:"lowercase"`
	Uppercase bool `json:"uppercase"`
	Numbers   bool `json:"numbers"`
	Symbols   bool `json:"symbols"`
}

type crackTimes struct {
	OnlineThrottled   string `json:"online_throttled"`
	OnlineUnthrottled string `json:"online_unthrottled"`
	OfflineSlow       string `json:"offline_slow"`
	OfflineFast       string `json:"offline_fast"`
}

type analyzeResponse struct {
	Score           int            `json:"score"`
	Strength        string         `json:"strength"`
	EntropyBits     float64        `json:"entropy_bits"`
	UniqueCharRatio float64        `json:"unique_char_ratio"`
	Length          int            `json:"length"`
	CharacterTypes  characterTypes `json:"character_types"`
	Issues          []string       `json:"issues"`
	Suggestions     []string       `json:"suggestions"`
	CrackTime       string         `json:"crack_time,omitempty"`
	CrackTimes      *crackTimes    `json:"crack_times,omitempty"`
	Guesses         float64        `json:"guesses,omitempty"`
}

type breachRequest struct {
	Password string `json:"password" binding:"required"`
}

type breachResponse struct {
	Compromised    bool   `json:"compromised"`
	BreachCount    uint64 `json:"breach_count"`
	RiskLevel      string `json:"risk_level"`
	Message        string `json:"message"`
	Recommendation string `json:"recommendation"`
	Unavailable    bool   `json:"unavailable"`
}

type generateRequest struct {
	Length         int   `json:"length"`
	IncludeUpper   *bool `json:"include_upper"`
	IncludeLower   *bool `json:"include_lower"`
	IncludeNumbers *bool `json:"include_numbers"`
	IncludeSymbols *bool `json:"include_symbols"`
}

type generateResponse struct {
	Password      string  `json:"password"`
	Length        int     `json:"length"`
	CharsetSize   int     `json:"charset_size"`
	EntropyBits   float64 `json:"entropy_bits"`
	StrengthScore int     `json:"strength_score"`
	StrengthLevel string  `json:"strength_level"`
}

type healthResponse struct {
	Status        string  `json:"status"`
	MemoryUsedPct float64 `json:"memory_used_pct"`
	MemoryFreeMiB uint64  `json:"memory_free_mib"`
}
