package recordsource

import "gopkg.in/yaml.v3"

func readYAML(path string) ([]recordDTO, error) {
	const op = "recordsource.yaml"

	b, err := readFile(op, path)
	if err != nil {
		return nil, err
	}

	var dtos []recordDTO
	if err := yaml.Unmarshal(b, &dtos); err != nil {
		return nil, decodeError(op, path, err)
	}
	return dtos, nil
}
