package repo

import (
	"errors"

	"github.com/pulseplan/pulseplan/internal/engine/model"
	"github.com/pulseplan/pulseplan/pkg/database"
	"gorm.io/gorm"
)

type IMessageRepository interface {
	CreateChannel(c *model.Channel) error
	GetChannelById(channelId string) (*model.Channel, error)
	ListChannelsByTeam(teamId string) ([]*model.Channel, error)
	CreateMessage(m *model.Message) error
	// ListMessagesPage 按自增ID倒序取 limit+1 条, cursor 为上一页最早消息的ID, 0 表示最新页
	ListMessagesPage(channelId string, cursor uint64, limit int) ([]*model.Message, error)
}

type MessageRepo struct {
	database.IDatabase
}

func NewMessageRepo(db database.IDatabase) IMessageRepository {
	return &MessageRepo{IDatabase: db}
}

// CreateChannel 创建频道
func (r *MessageRepo) CreateChannel(c *model.Channel) error {
	return r.Database().Create(c).Error
}

// GetChannelById 根据频道ID获取频道, 不存在返回 nil
func (r *MessageRepo) GetChannelById(channelId string) (*model.Channel, error) {
	var c model.Channel
	err := r.Database().Where("channel_id = ?", channelId).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListChannelsByTeam 团队频道列表
func (r *MessageRepo) ListChannelsByTeam(teamId string) ([]*model.Channel, error) {
	var channels []*model.Channel
	err := r.Database().Where("team_id = ?", teamId).
		Order("id ASC").Find(&channels).Error
	if err != nil {
		return nil, err
	}
	return channels, nil
}

// CreateMessage 写入消息
func (r *MessageRepo) CreateMessage(m *model.Message) error {
	return r.Database().Create(m).Error
}

// ListMessagesPage 游标分页
func (r *MessageRepo) ListMessagesPage(channelId string, cursor uint64, limit int) ([]*model.Message, error) {
	if limit <= 0 {
		limit = 50
	}
	var messages []*model.Message
	db := r.Database().Where("channel_id = ?", channelId)
	if cursor > 0 {
		db = db.Where("id < ?", cursor)
	}
	err := db.Order("id DESC").Limit(limit + 1).Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
