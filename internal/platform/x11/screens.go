package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xinerama"

	"github.com/wingman-desktop/wingman/internal/model"
)

// Screens enumerates monitors via Xinerama, falling back to the root
// screen dimensions when the extension is unavailable (single head).
func (d *Detector) Screens() ([]model.Screen, error) {
	X, err := d.conn()
	if err != nil {
		return nil, err
	}

	if err := xinerama.Init(X.Conn()); err == nil {
		reply, err := xinerama.QueryScreens(X.Conn()).Reply()
		if err == nil && len(reply.ScreenInfo) > 0 {
			screens := make([]model.Screen, 0, len(reply.ScreenInfo))
			for i, info := range reply.ScreenInfo {
				screens = append(screens, model.Screen{
					Name:    fmt.Sprintf("xinerama-%d", i),
					Primary: i == 0,
					Bounds: model.Geometry{
						X:      int(info.XOrg),
						Y:      int(info.YOrg),
						Width:  int(info.Width),
						Height: int(info.Height),
					},
				})
			}
			return screens, nil
		}
	}

	root := X.Screen()
	return []model.Screen{{
		Name:    "root",
		Primary: true,
		Bounds: model.Geometry{
			Width:  int(root.WidthInPixels),
			Height: int(root.HeightInPixels),
		},
	}}, nil
}
