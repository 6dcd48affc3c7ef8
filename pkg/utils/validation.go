package utils

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/gin-gonic/gin"
)

func ValidateEmail(email string) (bool, error) {
	email_regex_pattern := `^[a-zA-Z0-9!#$%&'*+/=?^_` + "`" + `{|}~-]+(?:\.[a-zA-Z0-9!#$%&'*+/=?^_` + "`" + `{|}~-]+)*@(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]*[a-zA-Z0-9])?\.)+[a-zA-Z0-9](?:[a-zA-Z0-9-]*[a-zA-Z0-9])?$`

	regex, err := regexp.Compile(email_regex_pattern)
	if err != nil {
		return false, fmt.Errorf("error: compiling regex: %s", err)
	}

	if !regex.MatchString(email) {
		return false, fmt.Errorf("error: email format incorrect")
	}
	return true, nil
}

func ValidatePhone(phone string) (bool, error) {
	phone_regex_patterns := []string{
		`^\+33[67]\d{8}$`,  // +33 + mobile
		`^\+33[1-5]\d{8}$`, // +33 + landline
		`^0[1-9]\d{8}$`,    // domestic format: 0 + 9 digits
	}

	for _, pattern := range phone_regex_patterns {
		if matched, _ := regexp.MatchString(pattern, phone); matched {
			return true, nil
		}
	}
	return false, fmt.Errorf("phone format incorrect")
}

// GetQueryParamAsInt reads a positive integer query parameter, falling back
// to defaultValue when the parameter is absent. The admin list endpoints use
// it for their page window.
func GetQueryParamAsInt(c *gin.Context, paramName string, defaultValue int) (int, error) {
	paramValue := c.Query(paramName)

	if paramValue == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(paramValue)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", paramName)
	}

	if intValue <= 0 {
		return 0, fmt.Errorf("invalid %s", paramName)
	}

	return intValue, nil
}
