// Copyright 2025 PulsePlan Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mail

import (
	"fmt"

	"github.com/pulseplan/pulseplan/pkg/log"
	"gopkg.in/gomail.v2"
)

// Mail SMTP 配置
type Mail struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	FromName string `mapstructure:"fromName"`
	// AppURL 邀请链接的前端地址前缀
	AppURL string `mapstructure:"appUrl"`
}

type Mailer struct {
	conf   *Mail
	dialer *gomail.Dialer
}

func NewMailer(conf *Mail) *Mailer {
	return &Mailer{
		conf:   conf,
		dialer: gomail.NewDialer(conf.Host, conf.Port, conf.Username, conf.Password),
	}
}

// SendInviteEmail 发送邀请邮件
func (m *Mailer) SendInviteEmail(to, token, teamName string) error {
	link := fmt.Sprintf("%s/invites/accept?token=%s", m.conf.AppURL, token)

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.conf.From, m.conf.FromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("You have been invited to %s", teamName))
	msg.SetBody("text/html", fmt.Sprintf(
		`<p>You have been invited to join <b>%s</b> on PulsePlan.</p>
<p><a href="%s">Accept the invite</a></p>
<p>The invite expires in 7 days.</p>`, teamName, link))

	if err := m.dialer.DialAndSend(msg); err != nil {
		log.Errorw("send invite email failed", "to", to, "error", err)
		return fmt.Errorf("send invite email failed: %w", err)
	}
	log.Infow("invite email sent", "to", to)
	return nil
}
