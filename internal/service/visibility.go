package service

import "github.com/guoguo/blog-backend/internal/db"

// CanView 判定访问者能否查看文章：公开发布的文章对所有人可见，
// 其余（草稿、私密、密码、付费）仅作者本人可见。DELETED 状态由
// 调用方在进入该判定前拒绝。viewerID 为 0 表示匿名访问。
//
// PASSWORD/PAID 可见性目前与 PRIVATE 同等对待，解锁路径未定。
func CanView(viewerID uint, article *db.Article) bool {
	if article.Status == db.StatusPublished && article.Visibility == db.VisibilityPublic {
		return true
	}
	return viewerID != 0 && viewerID == article.UserID
}
