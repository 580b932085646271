package scenarios

import (
	"context"
	"sort"

	"decisionlab/internal/app/ports"
	"decisionlab/internal/domain/scenario"
)

type Request struct {
	Family scenario.Family
}

type Response struct {
	Scenarios []scenario.Definition `json:"scenarios"`
}

type UseCase struct {
	Catalog ports.ScenarioCatalog
}

func (u UseCase) Execute(ctx context.Context, req Request) (Response, error) {
	defs, err := u.Catalog.List(ctx)
	if err != nil {
		return Response{}, err
	}
	out := make([]scenario.Definition, 0, len(defs))
	for _, d := range defs {
		if req.Family != "" && d.Family != req.Family {
			continue
		}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return Response{Scenarios: out}, nil
}
