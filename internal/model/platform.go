package model

// Platform represents a social media platform tasks run against.
type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformTikTok    Platform = "tiktok"
	PlatformYouTube   Platform = "youtube"
	PlatformTwitter   Platform = "twitter"
	PlatformFacebook  Platform = "facebook"
)

// TaskType represents the kind of engagement a task asks for.
type TaskType string

const (
	TaskTypeLike      TaskType = "like"
	TaskTypeFollow    TaskType = "follow"
	TaskTypeComment   TaskType = "comment"
	TaskTypeShare     TaskType = "share"
	TaskTypeView      TaskType = "view"
	TaskTypeSubscribe TaskType = "subscribe"
	TaskTypeRepost    TaskType = "repost"
)

// platformTaskTypes is the whitelist of task types per platform.
var platformTaskTypes = map[Platform][]TaskType{
	PlatformInstagram: {TaskTypeLike, TaskTypeFollow, TaskTypeComment, TaskTypeShare},
	PlatformTikTok:    {TaskTypeLike, TaskTypeFollow, TaskTypeComment, TaskTypeView, TaskTypeShare},
	PlatformYouTube:   {TaskTypeLike, TaskTypeSubscribe, TaskTypeComment, TaskTypeView},
	PlatformTwitter:   {TaskTypeLike, TaskTypeFollow, TaskTypeRepost, TaskTypeComment},
	PlatformFacebook:  {TaskTypeLike, TaskTypeFollow, TaskTypeComment, TaskTypeShare},
}

// Platforms returns all known platforms.
func Platforms() []Platform {
	return []Platform{
		PlatformInstagram,
		PlatformTikTok,
		PlatformYouTube,
		PlatformTwitter,
		PlatformFacebook,
	}
}

// ValidPlatform checks if a platform is part of the known set.
func ValidPlatform(p Platform) bool {
	_, ok := platformTaskTypes[p]
	return ok
}

// TaskTypesForPlatform returns the task types allowed on a platform.
func TaskTypesForPlatform(p Platform) []TaskType {
	return platformTaskTypes[p]
}

// ValidTaskTypeForPlatform checks if a task type is allowed on a platform.
func ValidTaskTypeForPlatform(p Platform, t TaskType) bool {
	for _, tt := range platformTaskTypes[p] {
		if tt == t {
			return true
		}
	}
	return false
}
