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

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/pulseplan/pulseplan/internal/engine/conf"
	"github.com/pulseplan/pulseplan/internal/engine/model"
	"github.com/pulseplan/pulseplan/pkg/database"
	"github.com/pulseplan/pulseplan/pkg/id"
	"github.com/pulseplan/pulseplan/pkg/version"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "pulseplan-cli",
	Short: "pulseplan cli is a command line tool",
	Long:  "pulseplan cli is a command line tool",
	Run: func(cmd *cobra.Command, args []string) {
		err := cmd.Help()
		if err != nil {
			return
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print version information",
	Run: func(cmd *cobra.Command, args []string) {
		info := version.GetVersion()
		fmt.Printf("version: %s\ncommit: %s\nbuilt: %s\ngo: %s\n",
			info.Version, info.GitCommit, info.BuildTime, info.GoVersion)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "run database schema migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		appConf := conf.NewConf(configFile)
		db, err := database.NewDatabase(appConf.Database)
		if err != nil {
			return fmt.Errorf("connect database failed: %w", err)
		}

		err = db.AutoMigrate(
			&model.User{},
			&model.UserPermission{},
			&model.Team{},
			&model.TeamMember{},
			&model.TeamInvite{},
			&model.Project{},
			&model.ProjectAccess{},
			&model.Task{},
			&model.TimeEntry{},
			&model.Credential{},
			&model.Channel{},
			&model.Message{},
			&model.Media{},
		)
		if err != nil {
			return fmt.Errorf("auto migrate failed: %w", err)
		}
		fmt.Println("migration complete")
		return nil
	},
}

var (
	adminEmail    string
	adminPassword string
	adminTeam     string
)

// bootstrapAdminCmd 初始化管理员账号与缺省工作区, 幂等
var bootstrapAdminCmd = &cobra.Command{
	Use:   "bootstrap-admin",
	Short: "create the initial admin user and default workspace",
	RunE: func(cmd *cobra.Command, args []string) error {
		appConf := conf.NewConf(configFile)
		db, err := database.NewDatabase(appConf.Database)
		if err != nil {
			return fmt.Errorf("connect database failed: %w", err)
		}

		var count int64
		if err := db.Model(&model.User{}).Where("email = ?", adminEmail).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			fmt.Printf("user %s already exists, nothing to do\n", adminEmail)
			return nil
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		user := &model.User{
			UserId:    id.GetUUID(),
			Email:     adminEmail,
			Username:  "admin",
			Password:  string(hash),
			IsEnabled: 1,
		}
		team := &model.Team{
			TeamId:    id.GetUUID(),
			Name:      adminTeam,
			OwnerId:   user.UserId,
			IsEnabled: 1,
		}
		member := &model.TeamMember{
			TeamId: team.TeamId,
			UserId: user.UserId,
			Role:   model.TeamRoleOwner,
		}

		return db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(user).Error; err != nil {
				return err
			}
			if err := tx.Create(team).Error; err != nil {
				return err
			}
			if err := tx.Create(member).Error; err != nil {
				return err
			}
			fmt.Printf("admin %s created with workspace %q\n", adminEmail, adminTeam)
			return nil
		})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "conf", "conf.d/config.toml", "conf file path")

	bootstrapAdminCmd.Flags().StringVar(&adminEmail, "email", "", "admin email (required)")
	bootstrapAdminCmd.Flags().StringVar(&adminPassword, "password", "", "admin password (required)")
	bootstrapAdminCmd.Flags().StringVar(&adminTeam, "team", "Default Workspace", "default workspace name")
	_ = bootstrapAdminCmd.MarkFlagRequired("email")
	_ = bootstrapAdminCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(bootstrapAdminCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		panic(err)
	}
}
