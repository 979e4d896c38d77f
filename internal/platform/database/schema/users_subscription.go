package schema

// UserSubscriptionTable represents the 'users.subscription' table
type UserSubscriptionTable struct {
	Table        string
	ID           string
	SubscriberID string
	ChannelID    string
	CreatedAt    string
}

// UserSubscription is the schema definition for users.subscription.
// A row means SubscriberID follows the channel owned by ChannelID.
var UserSubscription = UserSubscriptionTable{
	Table:        "users.subscription",
	ID:           "id",
	SubscriberID: "subscriberid",
	ChannelID:    "channelid",
	CreatedAt:    "createdat",
}
