// ABOUTME: Linear resampler for mono 16-bit PCM
// ABOUTME: Converts decoded audio to the runtime's canonical sample rate
package resample

// Mono16 converts mono 16-bit samples from inputRate to outputRate using
// linear interpolation. When the rates match the input is returned as-is.
//
// One-shot samples are short, so the whole buffer is converted in one pass;
// there is no streaming state to carry between calls.
func Mono16(input []int16, inputRate, outputRate int) []int16 {
	if inputRate == outputRate || inputRate <= 0 || outputRate <= 0 || len(input) == 0 {
		return input
	}

	ratio := float64(inputRate) / float64(outputRate)
	outputFrames := int(float64(len(input)) / ratio)
	if outputFrames < 1 {
		outputFrames = 1
	}

	output := make([]int16, 0, outputFrames)
	pos := 0.0

	for len(output) < outputFrames {
		idx := int(pos)
		if idx >= len(input)-1 {
			// Tail: hold the last sample instead of reading past the end
			output = append(output, input[len(input)-1])
			break
		}

		frac := pos - float64(idx)
		s1 := float64(input[idx])
		s2 := float64(input[idx+1])
		output = append(output, int16(s1*(1.0-frac)+s2*frac))

		pos += ratio
	}

	return output
}

// OutputLen returns the number of samples Mono16 produces for the given
// input length and rate pair.
func OutputLen(inputLen, inputRate, outputRate int) int {
	if inputRate == outputRate || inputRate <= 0 || outputRate <= 0 {
		return inputLen
	}
	n := int(float64(inputLen) * float64(outputRate) / float64(inputRate))
	if n < 1 && inputLen > 0 {
		n = 1
	}
	return n
}
