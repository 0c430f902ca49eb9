package discord

import (
	"fmt"
	"strings"
)

// cdnAvatarTemplate is the Discord CDN URL for user avatars.
const cdnAvatarTemplate = "https://cdn.discordapp.com/avatars/%s/%s.%s?size=256"

// animatedHashPrefix marks animated avatar hashes; those resolve to GIFs.
const animatedHashPrefix = "a_"

// newProfile projects a raw Discord user onto the relay's profile contract,
// synthesizing the CDN avatar URL from the user id and avatar hash.
func newProfile(user *rawUser) *Profile {
	return &Profile{
		ID:            user.ID,
		Username:      user.Username,
		Discriminator: user.Discriminator,
		Avatar:        user.Avatar,
		AvatarURL:     avatarURL(user.ID, user.Avatar),
		GlobalName:    user.GlobalName,
	}
}

// avatarURL builds the CDN avatar URL, choosing the animated extension for
// hashes carrying the animated marker. Returns nil without a hash.
func avatarURL(id string, hash *string) *string {
	if hash == nil || *hash == "" {
		return nil
	}
	ext := "png"
	if strings.HasPrefix(*hash, animatedHashPrefix) {
		ext = "gif"
	}
	url := fmt.Sprintf(cdnAvatarTemplate, id, *hash, ext)
	return &url
}
