package redis

import "fmt"

const keyPrefix = "teamapp"

func documentKey(key string) string {
	return fmt.Sprintf("%s:doc:%s", keyPrefix, key)
}
