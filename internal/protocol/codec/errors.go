package codec

import "errors"

var errMissingType = errors.New("消息缺少 type 字段")
