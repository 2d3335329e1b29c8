package ws

import (
	"cafefinder/internal/delivery/dto"
	"cafefinder/internal/domain/entity"
	"cafefinder/internal/domain/service"
)

// presenter turns session render calls into commands for the browser.
type presenter struct {
	client *client
}

var _ service.Presenter = (*presenter)(nil)

func (p *presenter) ShowStatus(state entity.SearchState, message string) {
	p.client.send(statusCommand{Type: CommandStatus, Message: message, State: state})
}

func (p *presenter) PlaceOrigin(origin entity.Point) {
	p.client.send(originCommand{Type: CommandOrigin, Lat: origin.Lat, Lng: origin.Lng})
}

func (p *presenter) ShowRadius(radiusMeters int) {
	p.client.send(radiusCommand{Type: CommandRadius, Radius: radiusMeters})
}

func (p *presenter) RenderMarkers(cafes []entity.Cafe) {
	p.client.send(cafesCommand{Type: CommandMarkers, Cafes: dto.NewCafes(cafes)})
}

func (p *presenter) RenderList(cafes []entity.Cafe) {
	p.client.send(cafesCommand{Type: CommandList, Cafes: dto.NewCafes(cafes)})
}

func (p *presenter) Highlight(id string, on bool) {
	p.client.send(highlightCommand{Type: CommandHighlight, ID: id, On: on})
}

func (p *presenter) OpenPopup(id string) {
	p.client.send(popupCommand{Type: CommandPopup, ID: id})
}

func (p *presenter) Focus(id string, at entity.Point, minZoom int) {
	p.client.send(focusCommand{Type: CommandFocus, ID: id, Lat: at.Lat, Lng: at.Lng, MinZoom: minZoom})
}
