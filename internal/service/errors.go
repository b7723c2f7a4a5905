package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid        = errors.New("参数错误")
	ErrRatingInvalid       = errors.New("评分必须是1到5的整数")
	ErrTargetNotFound      = errors.New("评价对象不存在")
	ErrReviewerNotFound    = errors.New("评价人不存在")
	ErrReviewSelf          = errors.New("不能评价自己")
	ErrReviewDuplicate     = errors.New("已评价过该对象")
	ErrReviewNotFound      = errors.New("评价不存在")
	ErrReviewNotHidden     = errors.New("评价未被隐藏")
	ErrFlagDuplicate       = errors.New("已举报过该评价")
	ErrAggregateNotFound   = errors.New("暂无评分数据")
	ErrCursorInvalid       = errors.New("分页游标无效")
	ErrWeightConfigInvalid = errors.New("声誉权重配置错误")
	UnauthorizedError      = errors.New("权限不足")
	UnExpectedError        = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:        BadRequest,
	ErrRatingInvalid:       BadRequest,
	ErrTargetNotFound:      NotFound,
	ErrReviewerNotFound:    NotFound,
	ErrReviewSelf:          BadRequest,
	ErrReviewDuplicate:     BadRequest,
	ErrReviewNotFound:      NotFound,
	ErrReviewNotHidden:     BadRequest,
	ErrFlagDuplicate:       BadRequest,
	ErrAggregateNotFound:   NotFound,
	ErrCursorInvalid:       BadRequest,
	ErrWeightConfigInvalid: InternalServerError,
	UnauthorizedError:      Unauthorized,
	UnExpectedError:        InternalServerError,
}
