package util

import "errors"

var (
	ErrInvalidStudentID = errors.New("学号必须是5位数字，例如 10130")
	ErrIncompleteTable  = errors.New("表格存在空单元格，所有单元格都必须填入数字")
	ErrOutOfRange       = errors.New("存在超出允许范围的值（时间 0–60 分，温度 -20–150°C）")
	ErrUnknownStudent   = errors.New("该学号不在 students 名册中，请先联系教师登记")
	ErrDatabaseOffline  = errors.New("数据库未连接，暂时无法保存")
	ErrLoginDisabled    = errors.New("teacher login is not configured")
	ErrAccessCodeWrong  = errors.New("access code mismatch")
)
