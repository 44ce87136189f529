package model

// Media 媒体文件表, 文件体保存在对象存储
type Media struct {
	BaseModel
	MediaId     string `gorm:"column:media_id" json:"mediaId"`         // 媒体唯一标识
	TeamId      string `gorm:"column:team_id" json:"teamId"`           // 团队ID
	ProjectId   string `gorm:"column:project_id" json:"projectId"`     // 项目ID(可空)
	ObjectKey   string `gorm:"column:object_key" json:"-"`             // 对象存储 key
	FileName    string `gorm:"column:file_name" json:"fileName"`       // 原始文件名
	ContentType string `gorm:"column:content_type" json:"contentType"` // MIME 类型
	Size        int64  `gorm:"column:size" json:"size"`                // 字节数
	UploadedBy  string `gorm:"column:uploaded_by" json:"uploadedBy"`   // 上传者用户ID
}

func (Media) TableName() string {
	return "t_media"
}

// MediaDownloadResp 预签名下载响应
type MediaDownloadResp struct {
	MediaId  string `json:"mediaId"`
	FileName string `json:"fileName"`
	Url      string `json:"url"`
	ExpireIn int    `json:"expireIn"` // 秒
}
