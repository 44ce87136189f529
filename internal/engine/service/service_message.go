package service

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/pulseplan/pulseplan/internal/engine/model"
	"github.com/pulseplan/pulseplan/internal/engine/repo"
	"github.com/pulseplan/pulseplan/pkg/id"
	"github.com/pulseplan/pulseplan/pkg/log"
	"gorm.io/datatypes"
)

// MessageBroadcaster 新消息实时广播(websocket hub)
type MessageBroadcaster interface {
	BroadcastToTeam(teamId string, payload []byte)
}

type MessageService struct {
	msgRepo     repo.IMessageRepository
	tenant      *TenantService
	broadcaster MessageBroadcaster
}

// NewMessageService broadcaster 可为 nil, 此时只落库不推送
func NewMessageService(msgRepo repo.IMessageRepository, tenant *TenantService, broadcaster MessageBroadcaster) *MessageService {
	return &MessageService{
		msgRepo:     msgRepo,
		tenant:      tenant,
		broadcaster: broadcaster,
	}
}

// CreateChannel 创建频道, 成员可建
func (s *MessageService) CreateChannel(teamId, userId string, req *model.CreateChannelReq) (*model.Channel, error) {
	if err := s.tenant.RequireTeamMember(userId, teamId); err != nil {
		return nil, err
	}

	c := &model.Channel{
		ChannelId: id.GetUUID(),
		TeamId:    teamId,
		Name:      req.Name,
		Type:      req.Type,
		CreatedBy: userId,
	}
	if req.Type == model.ChannelTypeDirect {
		participants := req.Participants
		found := false
		for _, p := range participants {
			if p == userId {
				found = true
				break
			}
		}
		if !found {
			participants = append(participants, userId)
		}
		data, err := sonic.Marshal(participants)
		if err != nil {
			return nil, fmt.Errorf("marshal participants failed: %w", err)
		}
		c.Participants = datatypes.JSON(data)
	}

	if err := s.msgRepo.CreateChannel(c); err != nil {
		log.Errorw("create channel failed", "teamId", teamId, "error", err)
		return nil, fmt.Errorf("create channel failed: %w", err)
	}
	return c, nil
}

// ListChannels 当前用户可见的频道: 团队频道 + 本人参与的私聊
func (s *MessageService) ListChannels(teamId, userId string) ([]*model.Channel, error) {
	if err := s.tenant.RequireTeamMember(userId, teamId); err != nil {
		return nil, err
	}
	channels, err := s.msgRepo.ListChannelsByTeam(teamId)
	if err != nil {
		return nil, fmt.Errorf("list channels failed: %w", err)
	}

	out := make([]*model.Channel, 0, len(channels))
	for _, c := range channels {
		if c.Type == model.ChannelTypeDirect && !s.isParticipant(c, userId) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// PostMessage 发送消息并广播
func (s *MessageService) PostMessage(channelId, userId string, req *model.PostMessageReq) (*model.Message, error) {
	c, err := s.requireChannelAccess(channelId, userId)
	if err != nil {
		return nil, err
	}

	m := &model.Message{
		MessageId: id.GetUild(),
		ChannelId: channelId,
		SenderId:  userId,
		Body:      req.Body,
		MediaId:   req.MediaId,
	}
	if err := s.msgRepo.CreateMessage(m); err != nil {
		log.Errorw("create message failed", "channelId", channelId, "error", err)
		return nil, fmt.Errorf("create message failed: %w", err)
	}

	if s.broadcaster != nil {
		if payload, err := sonic.Marshal(m); err == nil {
			s.broadcaster.BroadcastToTeam(c.TeamId, payload)
		}
	}
	return m, nil
}

// ListMessages 游标分页, 返回按时间倒序的一页
func (s *MessageService) ListMessages(channelId, userId string, cursor uint64, limit int) (*model.MessagePageResp, error) {
	if _, err := s.requireChannelAccess(channelId, userId); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	rows, err := s.msgRepo.ListMessagesPage(channelId, cursor, limit)
	if err != nil {
		return nil, fmt.Errorf("list messages failed: %w", err)
	}

	resp := &model.MessagePageResp{}
	if len(rows) > limit {
		resp.HasMore = true
		rows = rows[:limit]
	}
	for _, m := range rows {
		resp.Messages = append(resp.Messages, *m)
	}
	if n := len(rows); n > 0 {
		resp.NextCursor = rows[n-1].ID
	}
	return resp, nil
}

func (s *MessageService) requireChannelAccess(channelId, userId string) (*model.Channel, error) {
	c, err := s.msgRepo.GetChannelById(channelId)
	if err != nil {
		return nil, fmt.Errorf("get channel failed: %w", err)
	}
	if c == nil {
		return nil, ErrNotFound
	}
	if err := s.tenant.RequireTeamMember(userId, c.TeamId); err != nil {
		return nil, err
	}
	if c.Type == model.ChannelTypeDirect && !s.isParticipant(c, userId) {
		return nil, ErrForbidden
	}
	return c, nil
}

func (s *MessageService) isParticipant(c *model.Channel, userId string) bool {
	var participants []string
	if err := sonic.Unmarshal(c.Participants, &participants); err != nil {
		return false
	}
	for _, p := range participants {
		if p == userId {
			return true
		}
	}
	return false
}
