package utils

// XOREncode returns data XORed with a repeating key. An empty key returns a
// plain copy of data.
func XOREncode(data []byte, key []byte) []byte {
	result := make([]byte, len(data))
	if len(key) == 0 {
		copy(result, data)
		return result
	}
	for i := range data {
		result[i] = data[i] ^ key[i%len(key)]
	}
	return result
}

// XORDecode reverses XOREncode (XOR is symmetric)
func XORDecode(data []byte, key []byte) []byte {
	return XOREncode(data, key)
}

// Wipe overwrites every buffer with zeros.
func Wipe(bufs ...[]byte) {
	for _, b := range bufs {
		clear(b)
	}
}
