package model

// Message 消息表
type Message struct {
	BaseModel
	MessageId string `gorm:"column:message_id" json:"messageId"` // 消息唯一标识
	ChannelId string `gorm:"column:channel_id" json:"channelId"` // 频道ID
	SenderId  string `gorm:"column:sender_id" json:"senderId"`   // 发送者用户ID
	Body      string `gorm:"column:body" json:"body"`            // 消息内容
	MediaId   string `gorm:"column:media_id" json:"mediaId"`     // 附件媒体ID(可空)
}

func (Message) TableName() string {
	return "t_message"
}

// PostMessageReq 发送消息请求
type PostMessageReq struct {
	Body    string `json:"body" validate:"required_without=MediaId,max=4096"`
	MediaId string `json:"mediaId"`
}

// MessagePageResp 消息分页响应, 游标为最早一条消息的自增ID
type MessagePageResp struct {
	Messages   []Message `json:"messages"`
	NextCursor uint64    `json:"nextCursor"`
	HasMore    bool      `json:"hasMore"`
}
