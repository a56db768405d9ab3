package book

import (
	"github.com/xiebiao/bookcatalog/internal/domain/user"
)

// Operation 图书操作类型
type Operation int

const (
	OpRead Operation = iota
	OpCreate
	OpUpdate
	OpDelete
)

func (op Operation) String() string {
	switch op {
	case OpRead:
		return "read"
	case OpCreate:
		return "create"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Authorize 图书访问控制
// 规则:
// 1. 读:任何人(包括匿名用户)都可以
// 2. 匿名用户不能创建、修改、删除
// 3. 创建:登录即可(创建者强制设为图书所有者)
// 4. 修改/删除:管理员或图书所有者
//
// 调用方必须先确认图书存在(不存在返回404,不走权限判断)
func Authorize(actor user.Actor, b *Book, op Operation) error {
	if op == OpRead {
		return nil
	}
	if actor.IsAnonymous() {
		return ErrForbidden
	}

	switch op {
	case OpCreate:
		return nil
	case OpUpdate, OpDelete:
		if actor.IsStaff {
			return nil
		}
		if b != nil && b.IsOwnedBy(actor.ID) {
			return nil
		}
		return ErrForbidden
	default:
		return ErrForbidden
	}
}
