package util

import (
	"crypto/sha1"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const DefaultPrecision = 3

// FloatRoundOffWithPrecision Rounds of a float64 value to given precision. Ex: 2.667 with precision 2 -> 2.67.
func FloatRoundOffWithPrecision(value float64, precision int) (float64, error) {
	valueString := fmt.Sprintf("%0.*f", precision, value)
	roundOffValue, err := strconv.ParseFloat(valueString, 64)
	if err != nil {
		log.WithFields(log.Fields{"value": value,
			"precision": precision}).Error("error while rounding off float value")
		return roundOffValue, err
	}
	return roundOffValue, nil
}

// StringValueIn Returns true if `value` is in `list` else false.
func StringValueIn(value string, list []string) bool {
	for _, val := range list {
		if val == value {
			return true
		}
	}
	return false
}

// CleanSplitByDelimiter Splits a string by delimiter and removes any spaces.
// Ex: "a, b, c" and "a,b,c" will return same ["a", "b", "c"].
func CleanSplitByDelimiter(str string, del string) []string {
	split := strings.Split(str, del)

	cleanSplit := make([]string, 0, 0)
	for _, s := range split {
		trimmed := strings.TrimSpace(s)
		if trimmed == "" {
			continue
		}
		cleanSplit = append(cleanSplit, trimmed)
	}
	return cleanSplit
}

func CapitalizeFirstLetter(data string) string {
	return strings.Title(strings.ToLower(data))
}

func GetSnakeCaseToTitleString(str string) (title string) {
	if str == "" {
		return
	}

	tokens := strings.Split(str, "_")
	for i, token := range tokens {
		if i == 0 {
			title = strings.Title(token)
			continue
		}

		title = fmt.Sprintf("%s %s", title, strings.Title(token))
	}

	return title
}

func MinInt(a int, b int) int {
	if a < b {
		return a
	}
	return b
}

func MaxInt(a int, b int) int {
	if a > b {
		return a
	}
	return b
}

func MaxFloat64(a float64, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func MinFloat64(a float64, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func GetUUID() string {
	return uuid.New().String()
}

// GenerateHash To generate hash value for given byte array.
func GenerateHash(bytes []byte) string {
	hasher := sha1.New()
	hasher.Write(bytes)
	sha := base64.URLEncoding.EncodeToString(hasher.Sum(nil))
	return sha
}

// GenerateHashStringForStruct Marshals the passed struct and generates a unique hash string.
func GenerateHashStringForStruct(payload interface{}) (string, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return GenerateHash(payloadBytes), nil
}
