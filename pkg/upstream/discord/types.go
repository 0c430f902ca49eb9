package discord

// rawUser is the Discord API user object, reduced to the fields the relay
// projects. Avatar is null for users without a custom avatar.
type rawUser struct {
	ID            string  `json:"id"`
	Username      string  `json:"username"`
	Discriminator string  `json:"discriminator"`
	Avatar        *string `json:"avatar"`
	GlobalName    *string `json:"global_name"`
}

// Profile is the normalized profile DTO exposed by the relay.
type Profile struct {
	ID            string  `json:"id"`
	Username      string  `json:"username"`
	Discriminator string  `json:"discriminator"`
	Avatar        *string `json:"avatar"`

	// AvatarURL is synthesized from the CDN template; null without an
	// avatar hash.
	AvatarURL *string `json:"avatarUrl"`

	GlobalName *string `json:"global_name"`
}
