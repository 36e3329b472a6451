package notifications

import "errors"

var (
	ErrInvalidPushToken = errors.New("Invalid Expo push token")
	ErrInvalidPlatform  = errors.New("Platform must be ios, android or web")
)
