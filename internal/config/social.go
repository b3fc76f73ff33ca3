package config

import "time"

// SocialConfig controls the social channel and the retry queue in front of it.
type SocialConfig struct {
	// PostingEnabled is the global delivery toggle; when false every post is logged instead of sent.
	PostingEnabled  bool
	BaseURL         string
	AppKey          string
	AppSecret       string
	AccessToken     string
	AccessSecret    string
	HashtagsEnabled bool
	QueueExpiry     time.Duration
}

func loadSocial() SocialConfig {
	return SocialConfig{
		PostingEnabled:  boolEnvOrDefault(envEnablePosting, false),
		BaseURL:         envOrDefault(envXBaseURL, defaultXBaseURL),
		AppKey:          envOrDefault(envXAppKey, ""),
		AppSecret:       envOrDefault(envXAppSecret, ""),
		AccessToken:     envOrDefault(envXAccessToken, ""),
		AccessSecret:    envOrDefault(envXAccessSecret, ""),
		HashtagsEnabled: boolEnvOrDefault(envHashtagsOn, true),
		QueueExpiry:     durationEnvOrDefault(envQueueExpiry, defaultQueueExpiry),
	}
}
