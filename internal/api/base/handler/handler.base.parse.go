package basehdl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"

	"flora_commerce/internal/common"
	"flora_commerce/internal/global"
)

// ParseRequestBody parse body JSON vào input rồi validate chi tiết.
// Dùng json.Decoder với UseNumber để không mất độ chính xác số lớn.
func ParseRequestBody(c fiber.Ctx, input interface{}) error {
	body := c.Body()
	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.UseNumber()
	if err := decoder.Decode(input); err != nil {
		return common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, err)
	}

	return ValidateInput(input)
}

// ValidateInput chạy validator trên struct input, gom message lỗi từng field
func ValidateInput(input interface{}) error {
	if err := global.Validate.Struct(input); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("trường '%s' không hợp lệ (rule: %s)", fieldErr.Field(), fieldErr.Tag()))
			}
			return common.NewError(common.ErrCodeValidationInput, strings.Join(messages, "; "), common.StatusBadRequest, err)
		}
		return common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err)
	}
	return nil
}
